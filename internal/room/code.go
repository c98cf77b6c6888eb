package room

import (
	"fmt"
	"math/rand"
)

const codeSpace = 10000

// CodeGenerator produces short numeric room codes.
type CodeGenerator struct{}

func NewCodeGenerator() *CodeGenerator {
	return &CodeGenerator{}
}

// Generate returns a 4-digit code not present in existing. The code space
// is large relative to the number of concurrent rooms, so the retry loop
// terminates quickly in practice.
func (g *CodeGenerator) Generate(existing map[string]struct{}) string {
	for {
		code := fmt.Sprintf("%04d", rand.Intn(codeSpace))
		if _, taken := existing[code]; !taken {
			return code
		}
	}
}
