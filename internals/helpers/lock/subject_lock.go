// Package lock menyediakan serialisasi tulis per-subject.
//
// Semua operasi mutasi atas record milik satu subject (student, order,
// dokumen) harus jalan di bawah lock subject tsb; operasi antar subject
// bebas paralel. Transaksi DB tetap dipakai di dalamnya.
package lock

import "sync"

type SubjectLocker struct {
	mu sync.Map // subjectUID -> *sync.Mutex
}

var Default = &SubjectLocker{}

// Lock mengunci subject dan mengembalikan fungsi unlock-nya.
//
//	unlock := lock.Default.Lock(uid)
//	defer unlock()
func (l *SubjectLocker) Lock(subjectUID string) func() {
	v, _ := l.mu.LoadOrStore(subjectUID, &sync.Mutex{})
	m := v.(*sync.Mutex)
	m.Lock()
	return m.Unlock
}
