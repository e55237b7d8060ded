// File: utils/constants.go
package utils

// CompanyServicesCachePrefix prefixes the cached service list of a company.
const CompanyServicesCachePrefix = "company:services:"
