// Package convert exports packed arrays to other data formats.
//
// ToJSON renders an array as nested JSON arrays. ToArrow builds nested Arrow
// list arrays so packed values can be handed to columnar engines. Both keep
// NULL slots in place: JSON null and Arrow validity bits respectively. Start
// indices are dropped since neither format carries array bounds.
package convert
