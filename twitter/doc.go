// Package twitter posts violation figures to a Twitter account.
//
// Requests are signed with OAuth1 user context. Posting a figure is two
// calls: a v1.1 media upload followed by a v2 tweet referencing the media.
// Credentials come from the environment, never from the config file.
package twitter
