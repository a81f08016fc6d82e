// Package nutrition holds the pure arithmetic behind the tracker: the
// BMR/TDEE macro goal calculator and the daily nutrition rollup. Nothing in
// here touches the database; callers hand in resolved entries and foods.
package nutrition
