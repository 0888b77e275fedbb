package migrations

// ApplyFS runs the migrations found in files instead of the embedded set.
var ApplyFS = apply
