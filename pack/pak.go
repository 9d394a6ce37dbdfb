// SPDX-License-Identifier: GPL-2.0-or-later

package pack

import (
	"bytes"
	"encoding/binary"
	"io"
	"os"
	"sort"

	"github.com/pkg/errors"
)

const (
	entrySize  = 64
	headerSize = 12
	// MaxNameLen is the longest file name a pack can hold.
	MaxNameLen = 55
)

type header struct {
	ID     [4]byte
	Offset int32
	Size   int32
}

type entry struct {
	Name   [56]byte
	Offset int32
	Size   int32
}

type Pack struct {
	f     *os.File
	files map[string]*qfile
	name  string
}

type qfile struct {
	offset int64
	size   int64
}

// Open returns a io.SectionReader or os.ErrNotExist if the pak has no
// entry with the provided name.
func (p *Pack) Open(name string) (*io.SectionReader, error) {
	q, ok := p.files[name]
	if !ok {
		return nil, os.ErrNotExist
	}

	return io.NewSectionReader(p.f, q.offset, q.size), nil
}

// Files returns the sorted names of all entries.
func (p *Pack) Files() []string {
	r := make([]string, 0, len(p.files))
	for n := range p.files {
		r = append(r, n)
	}
	sort.Strings(r)
	return r
}

func (p *Pack) String() string {
	return p.name
}

func (p *Pack) Close() error {
	return p.f.Close()
}

func newPack(name string) (*Pack, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	return &Pack{f: f, name: name}, nil
}

func (p *Pack) init() error {
	var h header
	if err := binary.Read(p.f, binary.LittleEndian, &h); err != nil {
		return errors.Wrap(err, "reading header")
	}
	magic := []byte("PACK")
	if !bytes.Equal(magic, h.ID[:]) {
		return errors.New("Not a pack")
	}
	r, err := p.f.Seek(int64(h.Offset), io.SeekStart)
	if err != nil {
		return err
	}
	if r != int64(h.Offset) {
		return errors.New("Not long enough")
	}
	filenum := h.Size / entrySize
	p.files = make(map[string]*qfile, filenum)
	for i := int32(0); i < filenum; i++ {
		var e entry
		if err := binary.Read(p.f, binary.LittleEndian, &e); err != nil {
			return errors.Wrapf(err, "reading entry %d", i)
		}
		n := bytes.IndexByte(e.Name[:], 0)
		if n < 0 {
			n = len(e.Name)
		}
		name := string(e.Name[:n])
		if p.files[name] != nil {
			return errors.New("files in pack are not unique")
		}
		p.files[name] = &qfile{
			offset: int64(e.Offset),
			size:   int64(e.Size),
		}
	}
	return nil
}

func NewPackReader(name string) (*Pack, error) {
	p, err := newPack(name)
	if err != nil {
		return nil, err
	}
	if err := p.init(); err != nil {
		p.Close()
		return nil, errors.Wrapf(err, "pack %s", name)
	}
	return p, nil
}

// File is one entry to be written into a pack.
type File struct {
	Name string
	Data []byte
}

// Write stores files as a pack: header, file data, then the directory.
func Write(w io.Writer, files []File) error {
	seen := make(map[string]bool, len(files))
	dir := make([]entry, 0, len(files))
	offset := int32(headerSize)
	for _, f := range files {
		if len(f.Name) == 0 || len(f.Name) > MaxNameLen {
			return errors.Errorf("bad file name %q", f.Name)
		}
		if seen[f.Name] {
			return errors.Errorf("duplicate file %s", f.Name)
		}
		seen[f.Name] = true
		var e entry
		copy(e.Name[:], f.Name)
		e.Offset = offset
		e.Size = int32(len(f.Data))
		dir = append(dir, e)
		offset += e.Size
	}

	h := header{
		Offset: offset,
		Size:   int32(len(dir) * entrySize),
	}
	copy(h.ID[:], "PACK")
	if err := binary.Write(w, binary.LittleEndian, &h); err != nil {
		return errors.Wrap(err, "writing header")
	}
	for _, f := range files {
		if _, err := w.Write(f.Data); err != nil {
			return errors.Wrapf(err, "writing %s", f.Name)
		}
	}
	if err := binary.Write(w, binary.LittleEndian, dir); err != nil {
		return errors.Wrap(err, "writing directory")
	}
	return nil
}

// WriteFile creates the pack name holding files.
func WriteFile(name string, files []File) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := Write(f, files); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
