//go:build tools

package tools

//go:generate go run github.com/sqlc-dev/sqlc/cmd/sqlc generate

import (
	_ "github.com/sqlc-dev/sqlc/cmd/sqlc"
)
