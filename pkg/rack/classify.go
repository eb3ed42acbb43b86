package rack

import (
	"strings"

	"rackmond/pkg/models"
)

// Category is a semantic sensor category.
type Category string

const (
	CategoryTemperature Category = "temperature"
	CategoryPower       Category = "power"
	CategoryCPU         Category = "cpu"
	CategoryMemory      Category = "memory"
	CategoryCooling     Category = "cooling"
	CategoryNetwork     Category = "network"
	CategoryDisk        Category = "disk"
	CategoryEnvironment Category = "environment"
	CategoryOther       Category = "other"
)

// Categories lists every category in classification precedence order.
var Categories = []Category{
	CategoryTemperature,
	CategoryPower,
	CategoryCPU,
	CategoryMemory,
	CategoryCooling,
	CategoryNetwork,
	CategoryDisk,
	CategoryEnvironment,
	CategoryOther,
}

// categoryRule binds a category to the name keywords that select it.
// Rules are evaluated in order; the first match wins, so every sensor
// lands in exactly one category.
type categoryRule struct {
	category Category
	keywords []string
}

var categoryRules = []categoryRule{
	{CategoryTemperature, []string{"temp", "temperature", "thermal"}},
	{CategoryPower, []string{"power", "watt", "volt", "current", "vrm", "vbat", "vcc", "vcpu", "vdimm"}},
	{CategoryCPU, []string{"cpu", "processor", "core"}},
	{CategoryMemory, []string{"memory", "ram", "swap", "dimm"}},
	{CategoryCooling, []string{"fan", "rpm", "cooling", "airflow"}},
	{CategoryNetwork, []string{"network", "interface", "port", "nic", "throughput", "bandwidth"}},
	{CategoryDisk, []string{"disk", "storage", "io", "read", "write", "hdd", "sas"}},
	{CategoryEnvironment, []string{"humidity", "moisture"}},
}

// Classify assigns a sensor to exactly one category. Voltage sensors whose
// name mentions temperature still classify as power, and network-kind
// readings classify as network regardless of name.
func Classify(name string, reading models.SensorReading) Category {
	lower := strings.ToLower(name)

	for _, rule := range categoryRules {
		if rule.category == CategoryTemperature {
			if containsAny(lower, rule.keywords) && !strings.Contains(lower, "volt") {
				return CategoryTemperature
			}
			continue
		}
		if rule.category == CategoryNetwork {
			if reading.Type == models.KindNetwork || containsAny(lower, rule.keywords) {
				return CategoryNetwork
			}
			continue
		}
		if containsAny(lower, rule.keywords) {
			return rule.category
		}
	}

	return CategoryOther
}
