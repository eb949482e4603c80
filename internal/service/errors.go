package service

import "errors"

var (
	ErrTitleRequired       = errors.New("title is required")
	ErrStatusRequired      = errors.New("status is required")
	ErrProjectNameRequired = errors.New("project name is required")
	ErrProjectNameTooLong  = errors.New("project name is longer than 200 characters")
	ErrProjectNotFound     = errors.New("project not found")
	ErrTaskNotFound        = errors.New("task not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrNotProjectMember    = errors.New("only project members can be assigned")
	ErrEmailRequired       = errors.New("email is required")
)
