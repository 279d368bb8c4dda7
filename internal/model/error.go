package model

import "errors"

var (
	ErrValidation = errors.New("invalid argument")

	ErrLocationNotFound = errors.New("location not found")
	ErrItemNotFound     = errors.New("item not found")
	ErrCategoryNotFound = errors.New("category not found")

	ErrNoKanbanRules = errors.New("category does not have kanban rules")

	// Quantity range failures; the transaction is aborted with no partial write.
	ErrQuantityUnderflow = errors.New("not enough stock available")
	ErrQuantityOverMax   = errors.New("quantity would exceed maximum stock level")

	ErrProposalNotFound   = errors.New("quantity proposal not found or expired")
	ErrOperationCancelled = errors.New("operation cancelled by operator")

	// Occupancy guard failures detected inside the commit transaction.
	ErrStackFull      = errors.New("ground location has reached maximum capacity")
	ErrWeightExceeded = errors.New("weight exceeds location capacity")

	ErrNoLocationAvailable = errors.New("no suitable location available")
)
