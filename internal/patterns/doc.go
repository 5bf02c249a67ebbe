// Package patterns loads the ordered regex→replacement filter used by the
// substitution engine. Filter files are JSON objects or YAML mappings; the
// declaration order of their keys is the order in which patterns apply.
package patterns
