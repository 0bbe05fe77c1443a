// Package tab implements per-tab enrichment and video management on top of
// the session store.
//
// Advisory text and search results arrive asynchronously from the gateway and
// are merged back through whole-tab replacement. Two rules keep late results
// safe:
//
//   - Supersession: a result is applied only if its tab still exists and its
//     per-tab sequence number is still the latest issued. A second search
//     started before the first completes always wins; the superseded response
//     is discarded, never mixed in.
//   - Detachment: enrichment runs on background contexts, so a finished HTTP
//     request or closed WebSocket never cancels a merge half-way.
//
// Advisory fetches are fire-and-forget: the tab shows a placeholder until the
// first response lands and stays fully interactive in between.
package tab
