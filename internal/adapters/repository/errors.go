package repository

import "errors"

// ErrUnexpectedReply reports a Redis script reply of the wrong shape.
var ErrUnexpectedReply = errors.New("unexpected redis reply")
