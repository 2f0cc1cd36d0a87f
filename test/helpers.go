package test

import (
	"fmt"

	"github.com/google/uuid"
)

// RandomEmail returns an email address that is unique for the test run.
func RandomEmail() string {
	return fmt.Sprintf("%s@example.com", uuid.NewString())
}
