package service

import (
	model "wyffle_backend/internals/features/documents/model"
)

// Viewer untuk filter visibilitas dokumen.
type Viewer struct {
	SubjectUID string
	IsAdmin    bool
}

// CanSee: admin melihat semua; student hanya dokumen miliknya yang
// sudah di-enable.
func CanSee(v Viewer, d *model.DocumentModel) bool {
	if v.IsAdmin {
		return true
	}
	return d.DocumentStudentUID == v.SubjectUID && d.DocumentIsEnabled
}

// FilterVisible memotong list ke dokumen yang boleh dilihat viewer.
// Dipakai sebagai jaring kedua sesudah filter query.
func FilterVisible(v Viewer, docs []model.DocumentModel) []model.DocumentModel {
	out := make([]model.DocumentModel, 0, len(docs))
	for i := range docs {
		if CanSee(v, &docs[i]) {
			out = append(out, docs[i])
		}
	}
	return out
}
