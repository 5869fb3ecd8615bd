// Package advice turns evaluation snapshots into tactical advisories.
//
// A rule engine evaluates threshold conditions ("margin < 0",
// "max_resistance > 1") against every stored snapshot, with per-rule
// cooldowns and optional webhook delivery when an advisory fires or
// resolves. The built-in default rules reproduce the dashboard's original
// guidance: rest for high-resistance members, burnout warnings for leaders
// without slack, and a collapse warning for negative margins.
package advice
