package main

import (
	"errors"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// ErrNotConverged reports that the solver failed to reach the requested
// residual tolerance. Variables keep their last-attempted values; the
// failure is surfaced to the caller without retrying.
var ErrNotConverged = errors.New("solver did not converge")

/*
The external NLP solver collaborator. The triple phase boundary model only
assembles the algebraic system; solving it is delegated to an
implementation of this interface, which blocks until convergence or
failure. Any timeout or cancellation is the solver's responsibility.
*/
type Solver interface {
	Solve(sctx *SolveContext, sys *System) error
}

/*
Carries the logger and solver used by the initialize and solve entry
points, replacing an implicit per-model global logging context.
*/
type SolveContext struct {
	log    *logrus.Entry
	solver Solver
}

func NewSolveContext(name string, level logrus.Level) *SolveContext {
	logger := logrus.New()
	logger.SetLevel(level)
	return &SolveContext{
		log:    logger.WithField("model", name),
		solver: NewNewtonSolver(),
	}
}

/*
A damped Newton iteration with a finite-difference Jacobian and bound
clipping. It stands in for the black-box NLP solver the surrounding
flowsheet normally supplies; the boundary model itself only depends on the
Solver interface.
*/
type NewtonSolver struct {
	max_iter int
	tol      float64 // infinity-norm tolerance on the scaled residuals
	fd_step  float64 // relative finite-difference perturbation
}

func NewNewtonSolver() *NewtonSolver {
	return &NewtonSolver{
		max_iter: 50,
		tol:      1.0e-9,
		fd_step:  1.0e-7,
	}
}

func (ns *NewtonSolver) Solve(sctx *SolveContext, sys *System) error {
	n := sys.n_free()
	m := len(sys.eqns)
	if n != m {
		return fmt.Errorf("system is not square: %d free variables, %d equations", n, m)
	}
	if n == 0 {
		return nil
	}

	lb, ub := sys.bounds()
	x := sys.flatten()
	_clip(x, lb, ub)
	sys.unflatten(x)

	r := make([]float64, m)
	r2 := make([]float64, m)
	sys.residuals(r)
	norm := floats.Norm(r, math.Inf(1))

	for it := 0; it < ns.max_iter; it++ {
		sctx.log.Debugf("newton iteration %d: residual %.3e", it, norm)
		if norm < ns.tol {
			sctx.log.Infof("converged in %d iterations (residual %.3e)", it, norm)
			return nil
		}

		jac := mat.NewDense(m, n, nil)
		for k := 0; k < n; k++ {
			h := ns.fd_step * (1.0 + math.Abs(x[k]))
			xk := x[k]
			x[k] = xk + h
			sys.unflatten(x)
			sys.residuals(r2)
			for i := 0; i < m; i++ {
				jac.Set(i, k, (r2[i]-r[i])/h)
			}
			x[k] = xk
		}
		sys.unflatten(x)

		var lu mat.LU
		lu.Factorize(jac)
		rhs := mat.NewVecDense(m, nil)
		for i := 0; i < m; i++ {
			rhs.SetVec(i, -r[i])
		}
		dx := mat.NewVecDense(n, nil)
		if err := lu.SolveVecTo(dx, false, rhs); err != nil {
			return fmt.Errorf("%w: singular Jacobian at iteration %d", ErrNotConverged, it)
		}

		// damped step: halve until the residual norm decreases
		lambda := 1.0
		xt := make([]float64, n)
		accepted := false
		for cut := 0; cut < 10; cut++ {
			for k := 0; k < n; k++ {
				xt[k] = x[k] + lambda*dx.AtVec(k)
			}
			_clip(xt, lb, ub)
			sys.unflatten(xt)
			sys.residuals(r2)
			tnorm := floats.Norm(r2, math.Inf(1))
			if tnorm < norm || tnorm < ns.tol {
				copy(x, xt)
				copy(r, r2)
				norm = tnorm
				accepted = true
				break
			}
			lambda /= 2.0
		}
		if !accepted {
			// keep the smallest damped step and let the next iteration retry
			copy(x, xt)
			sys.unflatten(x)
			sys.residuals(r)
			norm = floats.Norm(r, math.Inf(1))
		}
	}

	// leave the variables at the last-attempted values
	sys.unflatten(x)
	return fmt.Errorf("%w after %d iterations (residual %.3e)", ErrNotConverged, ns.max_iter, norm)
}

func _clip(x, lb, ub []float64) {
	for k := range x {
		if x[k] < lb[k] {
			x[k] = lb[k]
		}
		if x[k] > ub[k] {
			x[k] = ub[k]
		}
	}
}
