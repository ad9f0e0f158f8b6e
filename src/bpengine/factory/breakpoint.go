package factory

import (
	"fmt"
	"math/rand"

	"github.com/uber/bp-engine/src/bpengine/entity"
	"go.lsp.dev/uri"
)

// FileURL returns a random file URL.
func FileURL() uri.URI {
	return uri.File(fmt.Sprintf("/home/user/project/pkg%d/file%d.go", rand.Intn(100), rand.Intn(1000)))
}

// Breakpoint returns an enabled whole-line breakpoint of the given type with a fresh id.
func Breakpoint(typeID string, u uri.URI, line int) entity.Breakpoint {
	return entity.Breakpoint{
		ID:      UUID(),
		TypeID:  typeID,
		FileURL: u,
		Line:    line,
		Enabled: true,
	}
}

// BreakpointRequest returns a request for a whole-line breakpoint of the given type.
func BreakpointRequest(typeID string, u uri.URI, line int) entity.BreakpointRequest {
	return entity.BreakpointRequest{
		TypeID:  typeID,
		FileURL: u,
		Line:    line,
	}
}
