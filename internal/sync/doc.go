// LectureSync - Academic Portal File Mirror
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lecturesync

/*
Package sync orchestrates the mirror of lecture files from the portal to the
storage directory.

One sync cycle:

 1. obtains a live session from the portal Authenticator (logging in if needed)
 2. fetches the class session page once and parses it into a timeline
 3. walks the timeline in stable order; files already in the dedup store are
    skipped, new ones are downloaded and then recorded
 4. returns the number of new files and their paths

A failed item never aborts the cycle. When the portal rejects the session
during an item, the session is dropped, a fresh login is made and the item
is retried once. If no session can be obtained the cycle ends with the
authentication error.

Only one cycle runs at a time. SyncOnce returns ErrSyncInProgress instead of
waiting, and a periodic tick that finds a cycle running is skipped.

Usage Example:

	mgr := sync.NewManager(auth, client, downloads, db, sync.Config{
	    TimelineURL:  client.Endpoint(cfg.Portal.TimelinePath),
	    Period:       cfg.Sync.AcademicPeriod,
	    Interval:     cfg.Sync.EffectiveInterval(),
	    InitialDelay: cfg.Sync.InitialDelay,
	    Parser:       timeline.New(timeline.StrategyStructured),
	})

	// Periodic loop (supervised)
	if err := mgr.Start(ctx); err != nil {
	    return err
	}
	defer mgr.Stop()

	// On demand
	result, err := mgr.SyncOnce(ctx)
	if errors.Is(err, sync.ErrSyncInProgress) {
	    // 409
	}

Thread Safety:

All Manager methods are safe for concurrent use.
*/
package sync
