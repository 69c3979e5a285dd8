// Package filemap opens the input file and hands the rest of the engine a
// read-only view of its bytes. On unix targets that view is a genuine
// zero-copy memory mapping; the byte ranges the station table keys on
// point straight into mapped pages until the Mapping is closed.
package filemap

import "fmt"

// Mapping owns the input file's read-only byte view. The chunker and
// workers index Data directly; nothing may retain Data past Close.
type Mapping struct {
	data   []byte
	closer func() error
}

// Data returns the file's contents. The returned slice must not be
// retained past Close.
func (m *Mapping) Data() []byte {
	return m.data
}

// Close releases the mapping. It is safe to call once, after every Range
// and Table derived from Data has been dropped — see the resource
// acquisition discipline in the concurrency and resource model.
func (m *Mapping) Close() error {
	if m.closer == nil {
		return nil
	}
	return m.closer()
}

// errEmptyFile is returned by Open for a zero-length input, which this
// implementation treats as an IO.fail rather than a vacuous success: the
// engine has no well-formed answer for "no lines."
func errEmptyFile(path string) error {
	return fmt.Errorf("filemap: %s is empty", path)
}
