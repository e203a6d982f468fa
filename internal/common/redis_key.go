package common

const RedisKeyKarmaLeaderboard = "karma_leaderboard"
