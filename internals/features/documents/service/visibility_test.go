package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	model "wyffle_backend/internals/features/documents/model"
)

func doc(owner string, enabled bool) model.DocumentModel {
	return model.DocumentModel{
		DocumentStudentUID: owner,
		DocumentType:       model.DocCertificate,
		DocumentIsEnabled:  enabled,
	}
}

func TestCanSee(t *testing.T) {
	d := doc("uid-1", false)

	// hidden: pemilik pun tidak bisa lihat
	assert.False(t, CanSee(Viewer{SubjectUID: "uid-1"}, &d))
	// admin selalu bisa
	assert.True(t, CanSee(Viewer{SubjectUID: "admin", IsAdmin: true}, &d))

	d.DocumentIsEnabled = true
	assert.True(t, CanSee(Viewer{SubjectUID: "uid-1"}, &d))
	// milik orang lain tetap tertutup meski enabled
	assert.False(t, CanSee(Viewer{SubjectUID: "uid-2"}, &d))
}

func TestFilterVisible(t *testing.T) {
	docs := []model.DocumentModel{
		doc("uid-1", true),
		doc("uid-1", false),
		doc("uid-2", true),
	}

	mine := FilterVisible(Viewer{SubjectUID: "uid-1"}, docs)
	assert.Len(t, mine, 1)
	assert.Equal(t, "uid-1", mine[0].DocumentStudentUID)

	all := FilterVisible(Viewer{SubjectUID: "x", IsAdmin: true}, docs)
	assert.Len(t, all, 3)
}
