package github

// ChangeFromPullRequestForTest exposes
// changeFromPullRequest.
var ChangeFromPullRequestForTest = changeFromPullRequest
