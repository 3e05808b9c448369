// Package workflow implements the campaign workflow orchestrator: a fixed
// distribute, schedule, assign, track sequence executed strictly in order
// for one campaign, producing a human-readable progress log. There are no
// retries, no rollback of earlier steps and no persistence of the run
// itself; the run log lives for the session that started it.
package workflow
