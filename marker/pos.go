package marker

import (
	"bytes"
	"fmt"
	"sort"
)

// PosDoc maps byte offsets of one buffer to lines and columns.
// The newline index is built on first use.
type PosDoc struct {
	Name string

	d []byte
	n []int
}

func NewPosDoc(name string, d []byte) *PosDoc {
	return &PosDoc{Name: name, d: d}
}

func (p *PosDoc) index() {
	if p.n != nil {
		return
	}
	p.n = make([]int, 0, bytes.Count(p.d, []byte{'\n'}))
	for i, c := range p.d {
		if c == '\n' {
			p.n = append(p.n, i)
		}
	}
}

// LineCol returns the 0-based line and column of off.
func (p *PosDoc) LineCol(off int) (int, int) {
	p.index()
	N := len(p.n)
	di := sort.Search(N, func(i int) bool {
		return p.n[i] >= off
	})
	if di == 0 {
		return 0, off
	}
	return di, off - p.n[di-1] - 1
}

func (p *PosDoc) Pos(i int) Pos {
	return Pos{I: i, D: p}
}

type Pos struct {
	I int
	D *PosDoc
}

func (p Pos) LineCol() (int, int) {
	if p.D == nil {
		return 0, p.I
	}
	return p.D.LineCol(p.I)
}

func (p Pos) Line() int {
	l, _ := p.LineCol()
	return l
}

func (p Pos) Col() int {
	_, c := p.LineCol()
	return c
}

// String renders the position as name:line:col with 1-based line and column,
// as compilers do.
func (p Pos) String() string {
	l, c := p.LineCol()
	name := "<input>"
	if p.D != nil && p.D.Name != "" {
		name = p.D.Name
	}
	return fmt.Sprintf("%s:%d:%d", name, l+1, c+1)
}
