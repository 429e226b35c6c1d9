package common

// Context speeds, in km/h. The engine's movement inputs arrive in km/h
// from the motion subsystem, so these stay km/h rather than SI.

// MPSToKmh converts meters per second to km/h.
const MPSToKmh = 3.6

const SpeedOfStillMaxKmh = 2.0 // or 0.56 m/s or 1.2 mph

const SpeedOfWalkingMinKmh = 2.0 // or 1.2 mph
const SpeedOfWalkingMaxKmh = 7.0 // or 4.3 mph

const SpeedOfJoggingMaxKmh = 12.0 // or 7.5 mph or 8min/mile

const SpeedOfCyclingMinKmh = 8.0  // or 5 mph
const SpeedOfCyclingMaxKmh = 22.0 // or 13.7 mph

const SpeedOfDrivingMinKmh = 22.0   // where unsignatured motion stops being a bike
const SpeedOfDrivingCrawlKmh = 5.0  // red light, stop-and-go
const SpeedOfDrivingSureKmh = 28.0  // or 17.4 mph; no human jogs this fast for long
const SpeedOfDrivingHighwayKmh = 91 // or 56 mph
