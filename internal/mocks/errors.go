package mocks

import "errors"

var errQuota = errors.New("Error 429, Message: Resource has been exhausted, Status: RESOURCE_EXHAUSTED")
