package main

import (
	"fmt"
	"math"
)

// How a model quantity is bound: created fresh and owned by this submodel,
// or borrowed from a variable owned by the enclosing cell model. Resolved
// once at construction, never re-checked at use sites.
type VarBinding int

const (
	OwnedFresh VarBinding = iota
	BorrowedShared
)

/*
One solver quantity indexed by (time step t, node iz) and optionally by
species. Bounds, the fixed flag and the scale factor apply to every
element, matching how the source model fixes and scales whole variables
rather than single entries.
*/
type Var struct {
	name   string
	comps  []string // species index, nil for quantities without one
	cindex map[string]int
	value  [][][]float64 // [t][iz][c] (c dimension has length 1 when comps is nil)
	lb     float64
	ub     float64
	fixed  bool
	scale  float64 // 0 means no scale factor assigned yet
}

func NewVar(name string, nt, nz int, comps []string, init, lb, ub float64) *Var {
	nc := 1
	var cindex map[string]int
	if comps != nil {
		nc = len(comps)
		cindex = make(map[string]int, nc)
		for c, j := range comps {
			cindex[j] = c
		}
	}
	value := make([][][]float64, nt)
	for t := 0; t < nt; t++ {
		value[t] = make([][]float64, nz)
		for iz := 0; iz < nz; iz++ {
			row := make([]float64, nc)
			for c := range row {
				row[c] = init
			}
			value[t][iz] = row
		}
	}
	return &Var{name: name, comps: comps, cindex: cindex, value: value, lb: lb, ub: ub}
}

func (v *Var) cidx(j string) int {
	c, ok := v.cindex[j]
	if !ok {
		panic(fmt.Sprintf("%s is not indexed by species %s", v.name, j))
	}
	return c
}

func (v *Var) at(t, iz int) float64 {
	return v.value[t][iz][0]
}

func (v *Var) at_comp(t, iz int, j string) float64 {
	return v.value[t][iz][v.cidx(j)]
}

func (v *Var) set(t, iz int, val float64) {
	v.value[t][iz][0] = val
}

func (v *Var) set_comp(t, iz int, j string, val float64) {
	v.value[t][iz][v.cidx(j)] = val
}

// set_all assigns val to every element.
func (v *Var) set_all(val float64) {
	for t := range v.value {
		for iz := range v.value[t] {
			for c := range v.value[t][iz] {
				v.value[t][iz][c] = val
			}
		}
	}
}

// set_all_comp assigns val to every (t, iz) element of species j.
func (v *Var) set_all_comp(j string, val float64) {
	c := v.cidx(j)
	for t := range v.value {
		for iz := range v.value[t] {
			v.value[t][iz][c] = val
		}
	}
}

func (v *Var) fix() {
	v.fixed = true
}

func (v *Var) unfix() {
	v.fixed = false
}

// fix_at assigns val everywhere and fixes the variable.
func (v *Var) fix_at(val float64) {
	v.set_all(val)
	v.fix()
}

// A module-wide scalar quantity, not node indexed.
type ScalarVar struct {
	name  string
	value float64
	lb    float64
	ub    float64
	fixed bool
	scale float64
}

func NewScalarVar(name string, init, lb, ub float64) *ScalarVar {
	return &ScalarVar{name: name, value: init, lb: lb, ub: ub}
}

func (v *ScalarVar) fix() {
	v.fixed = true
}

func (v *ScalarVar) unfix() {
	v.fixed = false
}

func (v *ScalarVar) fix_at(val float64) {
	v.value = val
	v.fixed = true
}

/*
A variable together with the ownership decision made for it at
construction time.
*/
type VarRef struct {
	*Var
	binding VarBinding
}

// _create_if_none returns a reference to the supplied variable, or creates
// an owned one. When fix_fresh is true a freshly created variable starts
// fixed: it is then a boundary input of a standalone model rather than a
// solved quantity.
func _create_if_none(supplied *Var, name string, nt, nz int, comps []string, init float64, fix_fresh bool) VarRef {
	if supplied != nil {
		return VarRef{Var: supplied, binding: BorrowedShared}
	}
	v := NewVar(name, nt, nz, comps, init, math.Inf(-1), math.Inf(1))
	if fix_fresh {
		v.fix()
	}
	return VarRef{Var: v, binding: OwnedFresh}
}

// set_scaling_factor assigns a scale factor. With overwrite false an
// already-assigned factor is never clobbered.
func set_scaling_factor(v *Var, s float64, overwrite bool) {
	if v.scale == 0.0 || overwrite {
		v.scale = s
	}
}

// get_scaling_factor returns the assigned scale factor, or def when none
// has been assigned yet.
func get_scaling_factor(v *Var, def float64) float64 {
	if v.scale == 0.0 {
		return def
	}
	return v.scale
}

// set_and_get_scaling_factor assigns def when no factor has been assigned
// yet and returns the factor in effect afterwards.
func set_and_get_scaling_factor(v *Var, def float64) float64 {
	set_scaling_factor(v, def, false)
	return v.scale
}
