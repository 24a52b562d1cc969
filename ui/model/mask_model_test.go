package model

import (
	"testing"

	"github.com/soocke/gesture-scroll/domain/motion"
	"github.com/soocke/gesture-scroll/domain/pipeline"
)

func TestMaskModel_CopiesMask(t *testing.T) {
	m := NewMaskModel()
	if _, ok := m.Latest(); ok {
		t.Fatal("expected no snapshot before first cycle")
	}
	mask := []byte{0, 1, 1, 0}
	m.ObserveCycle(pipeline.CycleReport{Seq: 3, Width: 2, Height: 2, Mask: mask,
		Diff: motion.DiffResult{Changed: 2, Total: 4, CentroidShift: 1.5}})
	mask[0] = 1 // worker reuses its buffer

	snap, ok := m.Latest()
	if !ok || snap.Seq != 3 || snap.Changed != 2 || snap.Fraction != 0.5 || snap.Shift != 1.5 {
		t.Fatalf("snapshot %+v ok=%v", snap, ok)
	}
	if snap.Mask[0] != 0 {
		t.Fatal("snapshot aliases the worker mask")
	}
}

func TestMaskModel_DisabledSkips(t *testing.T) {
	m := NewMaskModel()
	m.SetEnabled(false)
	m.ObserveCycle(pipeline.CycleReport{Seq: 1, Width: 1, Height: 1, Mask: []byte{1}})
	if _, ok := m.Latest(); ok {
		t.Fatal("disabled model stored a mask")
	}
}
