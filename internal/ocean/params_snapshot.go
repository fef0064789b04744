package ocean

import (
	"strconv"

	icore "oceansim/internal/core"
)

// Parameters reports the current tunables for HUD/diagnostic display.
func (o *Ocean) Parameters() icore.ParameterSnapshot {
	p := o.Params()
	groups := []icore.ParameterGroup{
		{
			Name: "Wind",
			Params: []icore.Parameter{
				floatParam("wind_speed", "Wind speed (m/s)", p.WindSpeed),
				floatParam("wind_direction", "Wind direction (deg)", p.WindDirection),
				floatParam("fetch", "Fetch length (m)", p.FetchLength),
			},
		},
		{
			Name: "Sea state",
			Params: []icore.Parameter{
				floatParam("swell", "Swell", p.Swell),
				floatParam("detail", "Detail", p.Detail),
				floatParam("spread", "Spread", p.Spread),
				floatParam("choppiness", "Choppiness", p.Choppiness),
			},
		},
		{
			Name: "Foam",
			Params: []icore.Parameter{
				floatParam("foam_amount", "Foam amount", p.FoamAmount),
				floatParam("foam_decay", "Foam decay (1/s)", p.FoamDecay),
				floatParam("foam_growth", "Foam growth (1/s)", p.FoamGrowth),
			},
		},
		{
			Name: "Layout",
			Params: []icore.Parameter{
				intParam("resolution", "Cascade resolution", o.cfg.Resolution),
				intParam("cascades", "Cascade count", len(o.cascades)),
				int64Param("seed", "Seed", o.cfg.Seed),
			},
		},
	}
	return icore.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the HUD-adjustable parameters with their bounds.
func (o *Ocean) ParameterControls() []icore.ParameterControl {
	return []icore.ParameterControl{
		{Key: "wind_speed", Label: "Wind speed", Type: icore.ParamTypeFloat, Step: 1, Min: 0.01, Max: 80, HasMin: true, HasMax: true},
		{Key: "wind_direction", Label: "Wind direction", Type: icore.ParamTypeFloat, Step: 15},
		{Key: "fetch", Label: "Fetch length", Type: icore.ParamTypeFloat, Step: 50000, Min: 1000, HasMin: true},
		{Key: "swell", Label: "Swell", Type: icore.ParamTypeFloat, Step: 0.1, Min: 0, Max: 2, HasMin: true, HasMax: true},
		{Key: "detail", Label: "Detail", Type: icore.ParamTypeFloat, Step: 0.1, Min: 0, Max: 1, HasMin: true, HasMax: true},
		{Key: "spread", Label: "Spread", Type: icore.ParamTypeFloat, Step: 0.1, Min: 0, Max: 1, HasMin: true, HasMax: true},
		{Key: "choppiness", Label: "Choppiness", Type: icore.ParamTypeFloat, Step: 0.1, Min: 0, Max: 2, HasMin: true, HasMax: true},
		{Key: "foam_amount", Label: "Foam amount", Type: icore.ParamTypeFloat, Step: 0.5, Min: 0, Max: 10, HasMin: true, HasMax: true},
	}
}

// SetFloatParameter routes HUD edits to the validated setters.
func (o *Ocean) SetFloatParameter(key string, value float64) bool {
	switch key {
	case "wind_speed":
		return o.SetWindSpeed(value)
	case "wind_direction":
		return o.SetWindDirection(value)
	case "fetch":
		return o.SetFetchLength(value)
	case "swell":
		return o.SetSwell(value)
	case "detail":
		return o.SetDetail(value)
	case "spread":
		return o.SetSpread(value)
	case "choppiness":
		return o.SetChoppiness(value)
	case "foam_amount":
		return o.SetFoamAmount(value)
	}
	return false
}

func intParam(key, label string, value int) icore.Parameter {
	return icore.Parameter{
		Key:   key,
		Label: label,
		Type:  icore.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) icore.Parameter {
	return icore.Parameter{
		Key:   key,
		Label: label,
		Type:  icore.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func floatParam(key, label string, value float64) icore.Parameter {
	return icore.Parameter{
		Key:   key,
		Label: label,
		Type:  icore.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}
