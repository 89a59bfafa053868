package utils

// UnavailableDatesCachePrefix prefixes the redis keys caching
// unavailable-dates responses. Full key: prefix + serviceID + ":" + city.
const UnavailableDatesCachePrefix = "unavail:"
