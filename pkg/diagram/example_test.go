package diagram_test

import (
	"fmt"

	"github.com/matzehuels/topodiagram/pkg/diagram"
)

func ExampleDraw() {
	d, err := diagram.Draw(diagram.Spec{Title: "Web Service"}, func(b *diagram.Builder) error {
		user, err := b.Node(diagram.KindServer, "user")
		if err != nil {
			return err
		}
		var web, db diagram.ID
		err = b.Cluster("vpc", func() error {
			if web, err = b.Node(diagram.KindComputeEngine, "web"); err != nil {
				return err
			}
			db, err = b.Node(diagram.KindSQL, "db")
			return err
		})
		if err != nil {
			return err
		}
		return b.Chain(user, web, db)
	})
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(d.Spec().OutputName())
	fmt.Println(d.NodeCount(), "nodes,", d.EdgeCount(), "edges")
	// Output:
	// web_service.png
	// 3 nodes, 2 edges
}
