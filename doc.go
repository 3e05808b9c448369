// Package main provides the entry point for the EVCare-Admin service.
// It runs the backend for an EV service-center network: warranty claims,
// recall/service campaigns, parts logistics and reporting. The service
// exposes a REST JSON API built on the Fiber framework, persists its data
// with gorm and gates every sensitive operation through a role-based
// permission evaluator.
package main
