package diagram

// Kind tags a leaf node with the component it depicts. It only affects
// appearance; the graph treats all leaves alike.
type Kind string

// Supported node kinds, named provider.category.component.
const (
	KindServer        Kind = "onprem.compute.server"
	KindComputeEngine Kind = "gcp.compute.compute_engine"
	KindSQL           Kind = "gcp.database.sql"
	KindMemorystore   Kind = "gcp.database.memorystore"
	KindFilestore     Kind = "gcp.storage.filestore"
	KindLoadBalancing Kind = "gcp.network.load_balancing"
)

type kindInfo struct {
	provider string
	category string
	name     string
}

var kinds = map[Kind]kindInfo{
	KindServer:        {"onprem", "compute", "Server"},
	KindComputeEngine: {"gcp", "compute", "Compute Engine"},
	KindSQL:           {"gcp", "database", "Cloud SQL"},
	KindMemorystore:   {"gcp", "database", "Memorystore"},
	KindFilestore:     {"gcp", "storage", "Filestore"},
	KindLoadBalancing: {"gcp", "network", "Load Balancing"},
}

// Kinds returns all supported kinds in a stable order.
func Kinds() []Kind {
	return []Kind{
		KindServer,
		KindComputeEngine,
		KindSQL,
		KindMemorystore,
		KindFilestore,
		KindLoadBalancing,
	}
}

// Valid reports whether k is a supported kind.
func (k Kind) Valid() bool {
	_, ok := kinds[k]
	return ok
}

// Provider returns the provider prefix, e.g. "gcp" or "onprem".
func (k Kind) Provider() string { return kinds[k].provider }

// Category returns the component category, e.g. "database".
func (k Kind) Category() string { return kinds[k].category }

// DisplayName returns a human-readable component name, e.g. "Cloud SQL".
func (k Kind) DisplayName() string { return kinds[k].name }
