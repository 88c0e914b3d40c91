package main

import (
	"fmt"
	"os"

	"github.com/GoetzGoerisch/open62541-nodeset-loader/nodeset"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var namespaceMapFile string

var loadCmd = &cobra.Command{
	Use:   "load <nodeset.xml>",
	Args:  cobra.ExactArgs(1),
	Short: "Ingest a NodeSet document and print a per-class count of its emitted nodes",
	RunE: func(cmd *cobra.Command, args []string) error {
		namespaces, err := loadNamespaceMap(namespaceMapFile)
		if err != nil {
			return err
		}

		nextGlobal := uint16(1)
		for _, global := range namespaces {
			if global >= nextGlobal {
				nextGlobal = global + 1
			}
		}
		registerNamespace := func(uri string) uint16 {
			if global, ok := namespaces[uri]; ok {
				return global
			}
			log.Warnf("no global index configured for namespace %q, assigning %d", uri, nextGlobal)
			global := nextGlobal
			nextGlobal++
			return global
		}

		counts := map[string]int{}
		onNode := func(n nodeset.Node) {
			h := n.Header()
			counts[h.NodeClass.String()]++
			log.Debugf("%s %s %q", h.NodeClass, h.ID, h.BrowseName)
		}

		session := nodeset.NewSession(log.StandardLogger())
		if err := session.Load(args[0], registerNamespace, onNode); err != nil {
			return err
		}

		for _, d := range session.Diagnostics() {
			log.Warn(d.String())
		}

		total := 0
		for class, n := range counts {
			fmt.Printf("%-14s %d\n", class, n)
			total += n
		}
		fmt.Printf("%-14s %d\n", "total", total)
		fmt.Printf("%-14s %d\n", "stored", session.NodeCount())
		return nil
	},
}

func init() {
	loadCmd.Flags().StringVar(&namespaceMapFile, "namespace-map", "", "YAML file mapping namespace URIs to host-assigned global indices")
	rootCmd.AddCommand(loadCmd)
}

// loadNamespaceMap decodes a YAML document of the form:
//
//	"urn:example:one": 3
//	"urn:example:two": 4
func loadNamespaceMap(path string) (map[string]uint16, error) {
	if path == "" {
		return map[string]uint16{}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open namespace map: %w", err)
	}
	defer f.Close()

	var m map[string]uint16
	if err := yaml.NewDecoder(f).Decode(&m); err != nil {
		return nil, fmt.Errorf("decode namespace map: %w", err)
	}
	return m, nil
}
