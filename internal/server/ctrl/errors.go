package ctrl

import "github.com/g502-hero/g502d/ctrltypes"

func ErrInvalidArgument(detail string) *ctrltypes.Error {
	return &ctrltypes.Error{Status: 400, Title: "Invalid Argument", Detail: detail}
}

func ErrNotFound(detail string) *ctrltypes.Error {
	return &ctrltypes.Error{Status: 404, Title: "Not Found", Detail: detail}
}

func ErrInternal(detail string) *ctrltypes.Error {
	return &ctrltypes.Error{Status: 500, Title: "Internal Error", Detail: detail}
}

// WrapError normalizes any error into the canonical problem shape.
func WrapError(err error) *ctrltypes.Error {
	if err == nil {
		return nil
	}
	if ce, ok := err.(*ctrltypes.Error); ok {
		return ce
	}
	return ErrInternal(err.Error())
}
