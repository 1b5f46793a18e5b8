package codegen

import (
	"fmt"
	"strings"
)

const benchmarkName = "benchmark"

// cflags keep the compiler from folding the synthetic call topology away.
// The prefetch define is empty unless the user builds with ENABLE_PREFETCH.
var cflags = []string{"$(DENABLE_PREFETCH)", "-O0"}

// prefetchIfdef turns make ENABLE_PREFETCH=1 into the preprocessor define
// that activates the emitted code prefetch blocks.
const prefetchIfdef = "ifdef ENABLE_PREFETCH\n" +
	"\tDENABLE_PREFETCH = -DENABLE_CODE_PREFETCH\n" +
	"endif\n\n"

// renderMakefile emits the build recipe: a default target linking the
// benchmark from per-partition objects, one rule per object so make -j can
// compile translation units concurrently, and a clean target.
func renderMakefile(parts []Partition) string {
	flags := strings.Join(cflags, " ")

	objects := make([]string, len(parts))
	for i, p := range parts {
		objects[i] = p.ObjectFile()
	}
	objList := strings.Join(objects, " ")

	var b strings.Builder
	b.WriteString(prefetchIfdef)
	fmt.Fprintf(&b, "%s: %s\n", benchmarkName, objList)
	fmt.Fprintf(&b, "\tgcc -o %s %s %s\n\n", benchmarkName, objList, flags)
	for _, p := range parts {
		fmt.Fprintf(&b, "%s: %s %s\n", p.ObjectFile(), p.Filename(), headerFile)
		fmt.Fprintf(&b, "\tgcc -c -o %s %s %s\n\n", p.ObjectFile(), p.Filename(), flags)
	}
	fmt.Fprintf(&b, "clean:\n\trm -f *.o %s\n", benchmarkName)
	return b.String()
}
