package topology

import "github.com/matzehuels/topodiagram/pkg/diagram"

const (
	// ActiveActiveTitle is the title rendered above the GCP active-active diagram.
	ActiveActiveTitle = "VPC with 1 public subnet for the TFE client \n and 1 private subnet for the TFE instances \nservices subnet for PostgreSQL and Redis"

	// ActiveActiveFilename is the output base name of the GCP active-active diagram.
	ActiveActiveFilename = "diagram_tfe_fdo_gcp_active-active"
)

// Cluster labels of the GCP active-active topology.
const (
	ClusterGCP            = "gcp"
	ClusterVPC            = "vpc"
	ClusterSubnetPublic   = "subnet_public1"
	ClusterSubnetPrivate  = "subnet_private1"
	ClusterSubnetServices = "subnet_services"
)

// Node labels of the GCP active-active topology.
const (
	LabelUser          = "user"
	LabelClientMachine = "Client machine"
	LabelLoadBalancer  = "Load Balancer"
	LabelTFEServer     = "TFE server"
	LabelPostgreSQL    = "PostgreSQL database"
	LabelRedis         = "Redis database"
	LabelBucket        = "TFE bucket"
)

// DefaultSpec returns the settings of the GCP active-active diagram:
// top-to-bottom PNG written as diagram_tfe_fdo_gcp_active-active.png.
func DefaultSpec() diagram.Spec {
	return diagram.Spec{
		Title:     ActiveActiveTitle,
		Direction: diagram.TopToBottom,
		Filename:  ActiveActiveFilename,
		Format:    diagram.FormatPNG,
	}
}

// ActiveActive holds the node handles of a built GCP active-active topology.
type ActiveActive struct {
	User          diagram.ID
	ClientMachine diagram.ID
	LoadBalancer  diagram.ID
	TFEServer     diagram.ID
	PostgreSQL    diagram.ID
	Redis         diagram.ID
	Bucket        diagram.ID
}

// BuildActiveActive declares the TFE FDO active-active deployment on GCP:
//
//	user
//	gcp
//	├── vpc
//	│   ├── subnet_public1:  Client machine, Load Balancer
//	│   ├── subnet_private1: TFE server
//	│   └── subnet_services: PostgreSQL database, Redis database
//	└── TFE bucket
//
// with traffic flowing user -> Load Balancer -> TFE server -> {PostgreSQL,
// Redis, bucket} and user -> Client machine.
func BuildActiveActive(b *diagram.Builder) (*ActiveActive, error) {
	var t ActiveActive
	var err error

	if t.User, err = b.Node(diagram.KindServer, LabelUser); err != nil {
		return nil, err
	}

	err = b.Cluster(ClusterGCP, func() error {
		err := b.Cluster(ClusterVPC, func() error {
			err := b.Cluster(ClusterSubnetPublic, func() error {
				var err error
				if t.ClientMachine, err = b.Node(diagram.KindComputeEngine, LabelClientMachine); err != nil {
					return err
				}
				t.LoadBalancer, err = b.Node(diagram.KindLoadBalancing, LabelLoadBalancer)
				return err
			})
			if err != nil {
				return err
			}

			err = b.Cluster(ClusterSubnetPrivate, func() error {
				var err error
				t.TFEServer, err = b.Node(diagram.KindComputeEngine, LabelTFEServer)
				return err
			})
			if err != nil {
				return err
			}

			return b.Cluster(ClusterSubnetServices, func() error {
				var err error
				if t.PostgreSQL, err = b.Node(diagram.KindSQL, LabelPostgreSQL); err != nil {
					return err
				}
				t.Redis, err = b.Node(diagram.KindMemorystore, LabelRedis)
				return err
			})
		})
		if err != nil {
			return err
		}

		t.Bucket, err = b.Node(diagram.KindFilestore, LabelBucket)
		return err
	})
	if err != nil {
		return nil, err
	}

	if err := b.Chain(t.User, t.LoadBalancer, t.TFEServer); err != nil {
		return nil, err
	}
	if err := b.Connect(t.TFEServer, t.PostgreSQL, t.Redis, t.Bucket); err != nil {
		return nil, err
	}
	if err := b.Connect(t.User, t.ClientMachine); err != nil {
		return nil, err
	}

	return &t, nil
}
