// Package tariff resolves service descriptions to a vehicle class and a
// price by fuzzy lookup against two static price tables. A miss never
// fails: pricing degrades from the primary per-vehicle table to the
// secondary flat table and finally to a fixed default list.
package tariff
