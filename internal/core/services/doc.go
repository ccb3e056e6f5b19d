// Package services implements the driving ports over the driven ports.
//
// Services contain the orchestration logic: the mount-validate-mirror-unmount
// pipeline and settings management. They depend only on domain types and
// port interfaces, never on concrete adapters.
package services
