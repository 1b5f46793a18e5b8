package codegen

import (
	"fmt"
	"strings"

	"cfgbench/graph"
)

const headerFile = "headers.h"

// recursionBudget bounds guarded calls so graphs with back edges still
// terminate when run.
const recursionBudget = 64

// fillerBody is the arithmetic block every function runs before its calls.
// It exists to give the frontend real instructions to fetch between
// branches; the computed values are never used.
const fillerBody = `int x = 1;
int y = x*x + 3;
int z = y*x + 12345;
int w = z*z + x - y;
`

// renderHeader emits one forward declaration per function so every
// translation unit compiles independently of where its callees live.
func renderHeader(g *graph.Graph) string {
	var b strings.Builder
	for _, id := range g.Order() {
		fmt.Fprintf(&b, "void %s();\n", graph.FunctionName(id))
	}
	return b.String()
}

// renderUnit emits one translation unit. The unit holding the root also
// carries the program entry point.
func renderUnit(g *graph.Graph, part Partition, withMain bool) string {
	var b strings.Builder
	if withMain {
		b.WriteString("#include <unistd.h>\n")
		b.WriteString("#include <stdio.h>\n")
		b.WriteString("#include <stdlib.h>\n")
	}
	fmt.Fprintf(&b, "#include %q\n\n", headerFile)

	for _, id := range part.IDs {
		b.WriteString(renderFunction(g, g.Node(id)))
		b.WriteString("\n")
	}

	if withMain {
		b.WriteString(renderMain(g))
	}
	return b.String()
}

// renderFunction emits one function definition: code prefetches when the
// node is marked, the filler body, the intra-function branch when the node
// is flagged, then one call statement per callee in callee order.
func renderFunction(g *graph.Graph, n *graph.Node) string {
	var b strings.Builder
	fmt.Fprintf(&b, "void %s() {\n", graph.FunctionName(n.ID))
	if n.Prefetch {
		for _, callee := range n.Callees {
			b.WriteString(renderPrefetch(callee))
		}
	}
	b.WriteString(fillerBody)

	if n.IntraControlFlow {
		// A data-only branch: taken path alternates per invocation, arms
		// never call, so the call topology is untouched.
		fmt.Fprintf(&b, "static int toggle_%d = 0;\n", n.ID)
		fmt.Fprintf(&b, "if (toggle_%d++ & 1) {\n", n.ID)
		b.WriteString("x = y*3 + 1;\n")
		b.WriteString("} else {\n")
		b.WriteString("x = z - y;\n")
		b.WriteString("}\n")
	}

	for i, callee := range n.Callees {
		if g.Node(callee).Depth <= n.Depth {
			b.WriteString(renderGuardedCall(n.ID, i, callee))
		} else {
			fmt.Fprintf(&b, "%s();\n", graph.FunctionName(callee))
		}
	}

	b.WriteString("}\n")
	return b.String()
}

// renderGuardedCall emits a recursion-bounded call for back and same-level
// edges. The guard keeps the generated program terminating while leaving
// exactly one call expression for the edge.
func renderGuardedCall(caller uint32, site int, callee uint32) string {
	guard := fmt.Sprintf("guard_%d_%d", caller, site)
	var b strings.Builder
	fmt.Fprintf(&b, "static int %s = 0;\n", guard)
	fmt.Fprintf(&b, "if (%s < %d) {\n", guard, recursionBudget)
	fmt.Fprintf(&b, "%s++;\n", guard)
	fmt.Fprintf(&b, "%s();\n", graph.FunctionName(callee))
	fmt.Fprintf(&b, "%s--;\n", guard)
	b.WriteString("}\n")
	return b.String()
}

// renderPrefetch emits the code prefetch for one callee, guarded twice:
// the outer ifdef is only satisfied when the recipe is built with
// ENABLE_PREFETCH, and the PRFM form only exists on aarch64 so other
// targets compile the block away.
func renderPrefetch(callee uint32) string {
	var b strings.Builder
	b.WriteString("#ifdef ENABLE_CODE_PREFETCH\n")
	b.WriteString("#ifdef __aarch64__\n")
	b.WriteString("asm (\n")
	b.WriteString("\"PRFM PLIL1KEEP, [%0]\\n\\t\"\n")
	fmt.Fprintf(&b, "::\"r\"(&%s): );\n", graph.FunctionName(callee))
	b.WriteString("#endif\n")
	b.WriteString("#endif\n")
	return b.String()
}

// renderMain emits the entry point: a getopt -l loop count around a call
// to the root function.
func renderMain(g *graph.Graph) string {
	root := graph.FunctionName(g.RootID)
	return fmt.Sprintf(`int main(int argc, char **argv) {
unsigned long loops = 1;
int c;
while ((c = getopt(argc, argv, "l:")) != -1) {
switch (c) {
case 'l':
loops = strtoul(optarg, NULL, 0);
break;
default:
printf("Invalid argument provided. Valid arguments: -l\n");
exit(1);
}
}
for (unsigned long i = 0; i < loops; i++) {
%s();
}
return 0;
}
`, root)
}
