package domain

// Record represents one attribute-map document belonging to an entity type.
// Values are the shapes produced by JSON decoding: strings, numbers,
// booleans, nil, lists and nested maps.
type Record map[string]interface{}
