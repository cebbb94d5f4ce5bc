// Package guard holds small construction-time helpers shared by the domain model.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by ConstructorGuard.Validate when the
// caller passes a nil error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks a struct as built by its constructor. Embed it as a
// private field and check it from the type's Validate method; a zero-value
// struct will fail validation.
//
// Example usage:
//
//	var ErrLineItemNotConstructed = errors.New("LineItem must be created via NewLineItem")
//
//	type LineItem struct {
//	    productID int64
//	    quantity  int
//	    guard     guard.ConstructorGuard
//	}
//
//	func (li LineItem) Validate() error {
//	    return li.guard.Validate(ErrLineItemNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard that reports the object as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for a constructed guard. Otherwise it returns
// validationError, or ErrDefaultConstructorGuard when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
