// Package planner turns a user question into a research plan: a set of
// sub-questions, each with hypothetical answers that serve as extra
// retrieval probes. Planning never fails outward; a degraded plan maps
// the original question to itself.
package planner
