package diagram

import (
	"slices"
	"testing"

	"github.com/matzehuels/topodiagram/pkg/errors"
)

func newTestBuilder(t *testing.T) *Builder {
	t.Helper()
	b, err := New(Spec{Title: "T", Filename: "out"})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return b
}

func mustNode(t *testing.T, b *Builder, kind Kind, label string) ID {
	t.Helper()
	id, err := b.Node(kind, label)
	if err != nil {
		t.Fatalf("Node(%q) error: %v", label, err)
	}
	return id
}

func TestNewRejectsInvalidSpec(t *testing.T) {
	_, err := New(Spec{Title: "T", Direction: "sideways"})
	if !errors.Is(err, errors.ErrCodeInvalidDirection) {
		t.Errorf("New() error = %v, want %s", err, errors.ErrCodeInvalidDirection)
	}

	_, err = New(Spec{})
	if !errors.Is(err, errors.ErrCodeInvalidFilename) {
		t.Errorf("New() with empty spec error = %v, want %s", err, errors.ErrCodeInvalidFilename)
	}
}

func TestBuilderNesting(t *testing.T) {
	b := newTestBuilder(t)

	user := mustNode(t, b, KindServer, "user")
	if err := b.OpenCluster("outer"); err != nil {
		t.Fatalf("OpenCluster() error: %v", err)
	}
	if err := b.OpenCluster("inner"); err != nil {
		t.Fatalf("OpenCluster() error: %v", err)
	}
	app := mustNode(t, b, KindComputeEngine, "app")
	if b.Depth() != 2 {
		t.Errorf("Depth() = %d, want 2", b.Depth())
	}
	if err := b.CloseCluster(); err != nil {
		t.Fatalf("CloseCluster() error: %v", err)
	}
	store := mustNode(t, b, KindFilestore, "store")
	if err := b.CloseCluster(); err != nil {
		t.Fatalf("CloseCluster() error: %v", err)
	}

	d, err := b.Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	if got := d.Path(app); !slices.Equal(got, []string{"outer", "inner"}) {
		t.Errorf("Path(app) = %v, want [outer inner]", got)
	}
	if got := d.Path(store); !slices.Equal(got, []string{"outer"}) {
		t.Errorf("Path(store) = %v, want [outer]", got)
	}
	if got := d.Path(user); len(got) != 0 {
		t.Errorf("Path(user) = %v, want empty", got)
	}
	if d.Depth(app) != 2 {
		t.Errorf("Depth(app) = %d, want 2", d.Depth(app))
	}

	roots := d.Roots()
	if len(roots) != 2 || roots[0] != user {
		t.Errorf("Roots() = %v, want [user outer]", roots)
	}
	if d.NodeCount() != 3 || d.ClusterCount() != 2 || d.Len() != 5 {
		t.Errorf("counts = %d nodes, %d clusters, %d total", d.NodeCount(), d.ClusterCount(), d.Len())
	}
}

func TestClusterScopeClosesOnError(t *testing.T) {
	b := newTestBuilder(t)
	want := errors.New(errors.ErrCodeInternal, "boom")

	err := b.Cluster("c", func() error { return want })
	if err != want {
		t.Errorf("Cluster() error = %v, want %v", err, want)
	}
	if b.Depth() != 0 {
		t.Errorf("Depth() after failed scope = %d, want 0", b.Depth())
	}
}

func TestDuplicateCluster(t *testing.T) {
	b := newTestBuilder(t)
	_ = b.Cluster("subnet", func() error { return nil })

	err := b.OpenCluster("subnet")
	if !errors.Is(err, errors.ErrCodeDuplicateCluster) {
		t.Errorf("OpenCluster() duplicate error = %v, want %s", err, errors.ErrCodeDuplicateCluster)
	}
}

func TestCloseWithoutOpen(t *testing.T) {
	b := newTestBuilder(t)
	if err := b.CloseCluster(); !errors.Is(err, errors.ErrCodeScope) {
		t.Errorf("CloseCluster() error = %v, want %s", err, errors.ErrCodeScope)
	}
}

func TestBuildWithOpenCluster(t *testing.T) {
	b := newTestBuilder(t)
	_ = b.OpenCluster("gcp")

	_, err := b.Build()
	if !errors.Is(err, errors.ErrCodeScope) {
		t.Errorf("Build() error = %v, want %s", err, errors.ErrCodeScope)
	}
}

func TestNodeValidation(t *testing.T) {
	b := newTestBuilder(t)

	if _, err := b.Node("gcp.unknown", "x"); !errors.Is(err, errors.ErrCodeInvalidKind) {
		t.Errorf("Node() unknown kind error = %v", err)
	}

	b = newTestBuilder(t)
	id, err := b.Node(KindServer, "")
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Node() empty label error = %v", err)
	}
	if id != Invalid {
		t.Errorf("Node() failed ID = %d, want Invalid", id)
	}
}

func TestConnectFanOut(t *testing.T) {
	b := newTestBuilder(t)
	src := mustNode(t, b, KindComputeEngine, "src")
	a := mustNode(t, b, KindSQL, "a")
	c := mustNode(t, b, KindMemorystore, "c")
	f := mustNode(t, b, KindFilestore, "f")

	if err := b.Connect(src, a, c, f); err != nil {
		t.Fatalf("Connect() error: %v", err)
	}

	d, err := b.Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	want := []Edge{{src, a}, {src, c}, {src, f}}
	if got := d.Edges(); !slices.Equal(got, want) {
		t.Errorf("Edges() = %v, want %v", got, want)
	}
}

func TestConnectUndeclaredNode(t *testing.T) {
	b := newTestBuilder(t)
	user := mustNode(t, b, KindServer, "user")
	lb := mustNode(t, b, KindLoadBalancing, "lb")

	err := b.Connect(user, lb, ID(99))
	if !errors.Is(err, errors.ErrCodeUnknownNode) {
		t.Fatalf("Connect() error = %v, want %s", err, errors.ErrCodeUnknownNode)
	}

	// Sticky: Build reports the reference error and nothing is half-added.
	if _, err := b.Build(); !errors.Is(err, errors.ErrCodeUnknownNode) {
		t.Errorf("Build() error = %v, want %s", err, errors.ErrCodeUnknownNode)
	}
	if len(b.edges) != 0 {
		t.Errorf("failed Connect added %d edges, want 0", len(b.edges))
	}
	if len(b.elements) != 2 {
		t.Errorf("failed Connect created placeholder nodes: %d elements", len(b.elements))
	}
}

func TestConnectNodeFromAnotherBuilder(t *testing.T) {
	other := newTestBuilder(t)
	_ = mustNode(t, other, KindServer, "a")
	_ = mustNode(t, other, KindServer, "b")
	foreign := mustNode(t, other, KindServer, "c")

	b := newTestBuilder(t)
	user := mustNode(t, b, KindServer, "user")

	if err := b.Connect(user, foreign); !errors.Is(err, errors.ErrCodeUnknownNode) {
		t.Errorf("Connect() error = %v, want %s", err, errors.ErrCodeUnknownNode)
	}
}

func TestConnectInvalidEdges(t *testing.T) {
	tests := []struct {
		name string
		run  func(b *Builder) error
	}{
		{"no targets", func(b *Builder) error {
			id, _ := b.Node(KindServer, "a")
			return b.Connect(id)
		}},
		{"cluster source", func(b *Builder) error {
			var id ID
			_ = b.Cluster("c", func() error {
				var err error
				id, err = b.Node(KindServer, "a")
				return err
			})
			return b.Connect(ID(0), id)
		}},
		{"short chain", func(b *Builder) error {
			id, _ := b.Node(KindServer, "a")
			return b.Chain(id)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.run(newTestBuilder(t))
			if !errors.Is(err, errors.ErrCodeInvalidEdge) {
				t.Errorf("error = %v, want %s", err, errors.ErrCodeInvalidEdge)
			}
		})
	}
}

func TestChain(t *testing.T) {
	b := newTestBuilder(t)
	a := mustNode(t, b, KindServer, "a")
	lb := mustNode(t, b, KindLoadBalancing, "lb")
	s := mustNode(t, b, KindComputeEngine, "s")

	if err := b.Chain(a, lb, s); err != nil {
		t.Fatalf("Chain() error: %v", err)
	}
	d, _ := b.Build()

	want := []Edge{{a, lb}, {lb, s}}
	if got := d.Edges(); !slices.Equal(got, want) {
		t.Errorf("Edges() = %v, want %v", got, want)
	}
}

func TestBuildSnapshotIsIndependent(t *testing.T) {
	b := newTestBuilder(t)
	a := mustNode(t, b, KindServer, "a")
	c := mustNode(t, b, KindServer, "c")
	d, _ := b.Build()

	_ = b.Connect(a, c)
	_, _ = b.Node(KindServer, "late")

	if d.EdgeCount() != 0 || d.Len() != 2 {
		t.Errorf("snapshot changed after Build: %d edges, %d elements", d.EdgeCount(), d.Len())
	}

	e, _ := d.Element(a)
	e.Label = "mutated"
	if got, _ := d.Element(a); got.Label != "a" {
		t.Errorf("Element() returned a shared value: %q", got.Label)
	}
}

func TestDrawDiscardsOnError(t *testing.T) {
	d, err := Draw(Spec{Title: "T"}, func(b *Builder) error {
		user, _ := b.Node(KindServer, "user")
		return b.Connect(user, ID(7))
	})
	if d != nil {
		t.Error("Draw() returned a diagram despite an error")
	}
	if !errors.Is(err, errors.ErrCodeUnknownNode) {
		t.Errorf("Draw() error = %v, want %s", err, errors.ErrCodeUnknownNode)
	}
}

func TestDrawReportsIgnoredErrors(t *testing.T) {
	_, err := Draw(Spec{Title: "T"}, func(b *Builder) error {
		_ = b.CloseCluster()
		return nil
	})
	if !errors.Is(err, errors.ErrCodeScope) {
		t.Errorf("Draw() error = %v, want %s", err, errors.ErrCodeScope)
	}
}

func TestWalkOrder(t *testing.T) {
	d, err := Draw(Spec{Title: "T"}, func(b *Builder) error {
		if _, err := b.Node(KindServer, "u"); err != nil {
			return err
		}
		return b.Cluster("g", func() error {
			if err := b.Cluster("v", func() error {
				_, err := b.Node(KindComputeEngine, "x")
				return err
			}); err != nil {
				return err
			}
			_, err := b.Node(KindFilestore, "y")
			return err
		})
	})
	if err != nil {
		t.Fatalf("Draw() error: %v", err)
	}

	var got []string
	var depths []int
	d.Walk(func(e Element, depth int) bool {
		got = append(got, e.Label)
		depths = append(depths, depth)
		return true
	})

	if want := []string{"u", "g", "v", "x", "y"}; !slices.Equal(got, want) {
		t.Errorf("Walk order = %v, want %v", got, want)
	}
	if want := []int{0, 0, 1, 2, 1}; !slices.Equal(depths, want) {
		t.Errorf("Walk depths = %v, want %v", depths, want)
	}
}
