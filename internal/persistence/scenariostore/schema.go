package scenariostore

const scenarioSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["scenario_name", "map_name"],
  "properties": {
    "scenario_name": {"type": "string", "minLength": 1},
    "map_name": {"type": "string", "minLength": 1},
    "seed_buses": {"type": "boolean"},
    "spawn_over_time": {
      "type": ["array", "null"],
      "items": {
        "type": "object",
        "required": ["num_agents", "start_time", "stop_time"],
        "properties": {
          "num_agents": {"type": "integer", "minimum": 0},
          "start_time": {"type": "number", "minimum": 0},
          "stop_time": {"type": "number", "minimum": 0},
          "percent_driving": {"type": "number", "minimum": 0, "maximum": 1},
          "percent_biking": {"type": "number", "minimum": 0, "maximum": 1},
          "percent_transit": {"type": "number", "minimum": 0, "maximum": 1}
        }
      }
    },
    "individ_trips": {
      "type": ["array", "null"],
      "items": {
        "type": "object",
        "required": ["depart", "from", "to", "mode"],
        "properties": {
          "depart": {"type": "number", "minimum": 0},
          "from": {"type": "integer", "minimum": 0},
          "to": {"type": "integer", "minimum": 0},
          "mode": {"enum": ["walk", "bike", "transit", "drive"]}
        }
      }
    }
  }
}`
