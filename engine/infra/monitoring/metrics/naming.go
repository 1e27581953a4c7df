package metrics

import "strings"

// Prefix namespaces every metric exported by the service.
const Prefix = "postapi_"

// MetricName prefixes name with the service namespace unless it already carries it.
func MetricName(name string) string {
	if strings.HasPrefix(name, Prefix) {
		return name
	}
	return Prefix + name
}

// MetricNameWithSubsystem joins subsystem and name under the service namespace.
func MetricNameWithSubsystem(subsystem, name string) string {
	subsystem = strings.Trim(subsystem, "_")
	switch {
	case subsystem == "":
		return MetricName(name)
	case name == "":
		return MetricName(subsystem)
	default:
		return MetricName(subsystem + "_" + name)
	}
}
