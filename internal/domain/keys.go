package domain

// KeyPrefix namespaces every key and index this service owns in the store.
const KeyPrefix = "rec:"
