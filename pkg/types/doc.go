// Package types defines the template and category entities, the taxonomy
// enum, the store interfaces, and the standard errors for funnelkit.
//
// A Template is a persisted record. A nil OwnerID marks it system-owned
// (replaceable by sync); any other value marks it user-owned and sync never
// touches it. Categories normalize the free-text legacy labels carried on
// templates, one set per taxonomy.
package types
