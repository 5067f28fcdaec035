package tsp

import "errors"

var (
	// ErrInsufficientPoints is returned when fewer than 2 points are given to the exact solver.
	ErrInsufficientPoints = errors.New("tsp: at least 2 points are required")

	// ErrSearchInterrupted is returned together with a best-so-far result when the search context
	// is cancelled or its deadline passes.
	ErrSearchInterrupted = errors.New("tsp: search interrupted before completion")

	// ErrSolverDivergence means the exact solver and an independent oracle disagree on the optimal cost.
	ErrSolverDivergence = errors.New("tsp: exact solver and oracle disagree on optimal cost")

	// ErrOracleTooLarge is returned by the brute-force oracle above its enumeration limit.
	ErrOracleTooLarge = errors.New("tsp: instance too large for brute-force enumeration")
)
