// Package env resolves the identity of this host.
package env

import (
	"os"

	"github.com/denisbrodbeck/machineid"
	"github.com/golang/glog"
)

const appID = "robotalks.compass"

// ID returns id when set, otherwise a stable id derived from the machine.
func ID(id string) string {
	if id != "" {
		return id
	}
	return MachineID()
}

// MachineID retrieves a short unique ID identifying the machine.
// The raw machine id is hashed with the app id and never published.
func MachineID() string {
	id, err := machineid.ProtectedID(appID)
	if err != nil {
		glog.Warningf("machine id unavailable, using hostname: %v", err)
		host, herr := os.Hostname()
		if herr != nil {
			panic(err)
		}
		return host
	}
	return id[:12]
}
