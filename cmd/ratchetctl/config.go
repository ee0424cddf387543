package main

import (
	"encoding/json"
	"os"

	ratchetapi "ratchet/pkg/ratchet"
)

func loadRunRequestFromConfig(path string) (ratchetapi.RunRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ratchetapi.RunRequest{}, err
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return ratchetapi.RunRequest{}, err
	}

	var req ratchetapi.RunRequest
	if v, ok := asString(raw["run_id"]); ok {
		req.RunID = v
	}
	if v, ok := asString(raw["shape"]); ok {
		req.Shape = v
	}
	if v, ok := asFloat64(raw["s"]); ok {
		req.SLeft = v
	}
	if v, ok := asFloat64(raw["s_right"]); ok {
		req.SRight = v
	}
	if v, ok := asFloat64(raw["eps"]); ok {
		req.EpsLeft = v
	}
	if v, ok := asFloat64(raw["eps_right"]); ok {
		req.EpsRight = v
	}
	if v, ok := asInt(raw["size"]); ok {
		req.SizeLeft = v
	}
	if v, ok := asInt(raw["size_right"]); ok {
		req.SizeRight = v
	}
	if v, ok := asInt(raw["population"]); ok {
		req.Population = v
	}
	if v, ok := asInt(raw["generations"]); ok {
		req.Generations = v
	}
	if v, ok := asFloat64(raw["u_ben"]); ok {
		req.BeneficialRate = v
	}
	if v, ok := asFloat64(raw["u_del"]); ok {
		req.DeleteriousRate = v
	}
	if v, ok := asFloat64(raw["p_right"]); ok {
		req.PRight = v
	}
	if v, ok := asUint64(raw["seed"]); ok {
		req.Seed = v
	}
	return req, nil
}

func overrideFromFlags(req *ratchetapi.RunRequest, set map[string]bool, flagValue map[string]any) {
	for name := range set {
		v, ok := flagValue[name]
		if !ok {
			continue
		}
		switch name {
		case "run-id":
			req.RunID = v.(string)
		case "shape":
			req.Shape = v.(string)
		case "s":
			req.SLeft = v.(float64)
		case "s-right":
			req.SRight = v.(float64)
		case "eps":
			req.EpsLeft = v.(float64)
		case "eps-right":
			req.EpsRight = v.(float64)
		case "size":
			req.SizeLeft = v.(int)
		case "size-right":
			req.SizeRight = v.(int)
		case "pop":
			req.Population = v.(int)
		case "gens":
			req.Generations = v.(int)
		case "u-ben":
			req.BeneficialRate = v.(float64)
		case "u-del":
			req.DeleteriousRate = v.(float64)
		case "p-right":
			req.PRight = v.(float64)
		case "seed":
			req.Seed = v.(uint64)
		}
	}
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func asInt(v any) (int, bool) {
	switch x := v.(type) {
	case int:
		return x, true
	case float64:
		return int(x), true
	default:
		return 0, false
	}
}

func asUint64(v any) (uint64, bool) {
	switch x := v.(type) {
	case uint64:
		return x, true
	case int:
		return uint64(x), true
	case float64:
		return uint64(x), true
	default:
		return 0, false
	}
}

func asFloat64(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int:
		return float64(x), true
	default:
		return 0, false
	}
}
