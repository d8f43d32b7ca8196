// Package catalog defines the canonical data model for the bikescraper
// reconciliation core: records as observed in one ingestion run, master
// entries with availability lifecycle, the closed specification-field
// vocabulary shared across brands, and stable identity-key derivation.
//
// A Record is transient: it exists only within one run, produced by the
// normalize, reconcile and inference stages. An Entry is persistent: created
// the first time its identity key is observed and never deleted, only
// transitioned between Available and Discontinued by the lifecycle merge.
package catalog
