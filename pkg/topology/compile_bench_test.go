package topology

import (
	"fmt"
	"testing"
)

// BenchmarkCompile_Linear benchmarks compiling linear chains of
// increasing size.
func BenchmarkCompile_Linear(b *testing.B) {
	sizes := []int{10, 100, 1000, 10000}

	for _, size := range sizes {
		b.Run(fmt.Sprintf("%d_nodes", size), func(b *testing.B) {
			builder := linearChainBuilder(size)

			b.ResetTimer()
			b.ReportAllocs()

			for i := 0; i < b.N; i++ {
				if _, err := builder.Compile(); err != nil {
					b.Fatalf("unexpected error: %v", err)
				}
			}
		})
	}
}

// BenchmarkCompile_Wide benchmarks compiling a graph with many source
// nodes feeding a single terminal node.
func BenchmarkCompile_Wide(b *testing.B) {
	sizes := []int{10, 100, 1000}

	for _, size := range sizes {
		b.Run(fmt.Sprintf("%d_nodes", size), func(b *testing.B) {
			builder := wideGraphBuilder(size)

			b.ResetTimer()
			b.ReportAllocs()

			for i := 0; i < b.N; i++ {
				if _, err := builder.Compile(); err != nil {
					b.Fatalf("unexpected error: %v", err)
				}
			}
		})
	}
}

func linearChainBuilder(size int) *Builder {
	b := NewBuilder()
	names := make([]string, size)
	for i := 0; i < size; i++ {
		names[i] = fmt.Sprintf("n%d", i)
		b.AddNode(names[i])
	}
	for i := 0; i < size-1; i++ {
		b.AddEdge(names[i], names[i+1])
	}
	return b
}

func wideGraphBuilder(size int) *Builder {
	b := NewBuilder()
	b.AddNode("sink")
	for i := 0; i < size; i++ {
		name := fmt.Sprintf("src%d", i)
		b.AddNode(name)
		b.AddEdge(name, "sink")
	}
	return b
}
