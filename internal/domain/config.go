package domain

// KeyPrefix namespaces all Redis keys written by this service.
const KeyPrefix = "staylens:"

// VectorDim is the embedding dimensionality for listing vectors.
// A stored listing carries either a full-length vector or none.
const VectorDim = 1536
