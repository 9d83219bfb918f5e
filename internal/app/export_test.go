package service

// WithAssembler exposes withAssembler to the external test package.
var WithAssembler = withAssembler
