package main

/*
One scalar equality constraint in residual form: resid() == 0 at a
solution. The scale factor conditions the equation for the solver.
*/
type Equation struct {
	name  string
	resid func() float64
	scale float64 // 0 means no scale factor assigned yet
}

// constraint_scaling_transform assigns an equation scale factor with the
// same overwrite-false semantics as variable scaling.
func constraint_scaling_transform(e *Equation, s float64, overwrite bool) {
	if e.scale == 0.0 || overwrite {
		e.scale = s
	}
}

/*
The assembled algebraic system handed to the external solver: every
variable of the submodel plus every equation, in a fixed deterministic
order. The system is built once at model-build time; only variable values
and fixed flags change afterwards.
*/
type System struct {
	vars  []*Var
	svars []*ScalarVar
	eqns  []*Equation
}

func (s *System) add_var(v *Var) *Var {
	s.vars = append(s.vars, v)
	return v
}

func (s *System) add_scalar(v *ScalarVar) *ScalarVar {
	s.svars = append(s.svars, v)
	return v
}

func (s *System) add_eqn(e *Equation) *Equation {
	s.eqns = append(s.eqns, e)
	return e
}

// n_free counts the scalar unknowns the solver may move.
func (s *System) n_free() int {
	n := 0
	for _, v := range s.vars {
		if v.fixed {
			continue
		}
		for t := range v.value {
			for iz := range v.value[t] {
				n += len(v.value[t][iz])
			}
		}
	}
	for _, v := range s.svars {
		if !v.fixed {
			n++
		}
	}
	return n
}

// flatten packs the free variable values into one vector, in registration
// order.
func (s *System) flatten() []float64 {
	x := make([]float64, 0, s.n_free())
	for _, v := range s.vars {
		if v.fixed {
			continue
		}
		for t := range v.value {
			for iz := range v.value[t] {
				x = append(x, v.value[t][iz]...)
			}
		}
	}
	for _, v := range s.svars {
		if !v.fixed {
			x = append(x, v.value)
		}
	}
	return x
}

// unflatten writes a solver vector back into the free variables.
func (s *System) unflatten(x []float64) {
	k := 0
	for _, v := range s.vars {
		if v.fixed {
			continue
		}
		for t := range v.value {
			for iz := range v.value[t] {
				for c := range v.value[t][iz] {
					v.value[t][iz][c] = x[k]
					k++
				}
			}
		}
	}
	for _, v := range s.svars {
		if !v.fixed {
			v.value = x[k]
			k++
		}
	}
}

// bounds returns elementwise lower and upper bounds aligned with flatten.
func (s *System) bounds() ([]float64, []float64) {
	n := s.n_free()
	lb := make([]float64, 0, n)
	ub := make([]float64, 0, n)
	for _, v := range s.vars {
		if v.fixed {
			continue
		}
		for t := range v.value {
			for iz := range v.value[t] {
				for range v.value[t][iz] {
					lb = append(lb, v.lb)
					ub = append(ub, v.ub)
				}
			}
		}
	}
	for _, v := range s.svars {
		if !v.fixed {
			lb = append(lb, v.lb)
			ub = append(ub, v.ub)
		}
	}
	return lb, ub
}

// residuals evaluates every equation residual, scaled, into r.
func (s *System) residuals(r []float64) {
	for i, e := range s.eqns {
		sc := e.scale
		if sc == 0.0 {
			sc = 1.0
		}
		r[i] = sc * e.resid()
	}
}
