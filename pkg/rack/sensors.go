package rack

import (
	"strconv"
	"strings"

	"rackmond/pkg/models"
	"rackmond/pkg/table"
)

// LoadSensors normalizes one rack's sensor table into a name-keyed reading
// map. Rows without a usable name are skipped; later rows with a duplicate
// name overwrite earlier ones.
func (e *Engine) LoadSensors(tbl *table.Table) map[string]models.SensorReading {
	sensors := make(map[string]models.SensorReading)
	roles := ResolveRoles(tbl.Columns)

	for _, row := range tbl.Rows {
		name := ""
		if label, ok := roles[RoleName]; ok {
			name = strings.TrimSpace(row[label].Text())
		}
		if name == "" {
			continue
		}

		value := 0.0
		if label, ok := roles[RoleValue]; ok {
			value = ParseValue(row[label])
		} else if label, ok := firstUnclaimed(tbl.Columns, roles); ok {
			value = ParseValue(row[label])
		}

		status := ""
		if label, ok := roles[RoleStatus]; ok && !row[label].IsMissing() {
			status = strings.TrimSpace(row[label].Text())
		}
		if status == "" {
			status = e.inferStatus(name, value)
		}

		units := ""
		if label, ok := roles[RoleUnits]; ok && !row[label].IsMissing() {
			units = strings.TrimSpace(row[label].Text())
		}

		sensors[name] = models.SensorReading{
			Value:    value,
			Status:   status,
			Units:    units,
			RawValue: strconv.FormatFloat(value, 'g', -1, 64),
			Type:     models.KindSensor,
		}
	}

	return sensors
}

// inferStatus derives a status for rows without a status column. Only
// temperature-named sensors get value thresholds; everything else is ok.
func (e *Engine) inferStatus(name string, value float64) string {
	if strings.Contains(strings.ToLower(name), "temp") {
		switch {
		case value > e.thresholds.TempCritical:
			return models.StatusCritical
		case value > e.thresholds.TempWarning:
			return models.StatusWarning
		}
	}
	return models.StatusOK
}
