package rest

/**
 * Environment variables
 */

// REST server env names
const RestHostEnvName = "PLANNER_HOST"
const RestPortEnvName = "PLANNER_PORT"

/**
 * Parameters
 */

// default REST server address
const DefaultRestHost = "0.0.0.0"
const DefaultRestPort = "8080"
