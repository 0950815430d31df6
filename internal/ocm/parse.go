package ocm

import "strings"

// parseClusterTable turns the tabular `ocm list clusters` output into typed
// records. All of the fragile text splitting lives here; callers only ever
// see Cluster values.
//
// Expected shape, one cluster per line with a header row:
//
//	ID                                NAME        API URL                    ...
//	1a2b3c4d5e6f7g8h9i0j1k2l3m4n5o6p  prod-east   https://api.prod-east...   ...
func parseClusterTable(out string) []Cluster {
	lines := strings.Split(out, "\n")
	clusters := make([]Cluster, 0, len(lines))
	first := true
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		if first {
			first = false
			if strings.EqualFold(fields[0], "ID") {
				continue
			}
		}
		clusters = append(clusters, Cluster{ID: fields[0], Name: fields[1]})
	}
	return clusters
}
