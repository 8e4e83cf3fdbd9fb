package main

import "errors"

var (
	errUsage         = errors.New("invalid usage")
	errInvalidForm   = errors.New("form is invalid")
	errCardNotFound  = errors.New("card not found")
	errForeignCard   = errors.New("card belongs to another user")
	errMissingFlag   = errors.New("required flag is missing")
	errRequestFailed = errors.New("request failed")
)
