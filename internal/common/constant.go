package common

// AccessTokenHeaderName is the gRPC metadata key carrying the device key on
// calls to the mirror server.
const AccessTokenHeaderName = "access_token"

// TrashKeySuffix is appended to a collection's storage key to form the key of
// its trash sub-collection.
const TrashKeySuffix = ".trash"
